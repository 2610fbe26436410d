package constants

// Gaussian artifacts. The optimization run and the RESP charge run use
// the same fixed deck/log/checkpoint names; the RESP copies live inside
// the molecule's RESP/ subdirectory.
const (
	// GaussianInput - input deck consumed by g16
	GaussianInput = "mpp.com"

	// GaussianLog - run log probed for the termination marker
	GaussianLog = "mpp.log"

	// GaussianChk - checkpoint written by the optimization and read back
	// by the RESP run (Guess=read Geom=checkpoint)
	GaussianChk = "mpp.chk"

	// NormalTermination - marker g16 prints once per completed job step.
	// Its absence from an existing log means the run crashed or is still
	// going; the tracker cannot tell those apart and does not try.
	NormalTermination = "Normal termination"

	// GeometryExt - extension of the geometry files the prep stage scans for
	GeometryExt = ".g"

	// CheckpointExt - extension used when probing for checkpoint files
	CheckpointExt = ".chk"
)

// Pipeline directory names
const (
	// RespDirName - per-molecule subdirectory holding the RESP charge run
	RespDirName = "RESP"

	// AmberDirName - subdirectory of RESP/ holding parameterization products
	AmberDirName = "AMBER"

	// CollectionDirName - batch collection directory; split collections get
	// a numeric suffix instead (SACP_1, SACP_2, ...)
	CollectionDirName = "SACP"

	// FilePrepDirName - library subdirectory excluded from collection
	FilePrepDirName = "File_Prep"
)

// Parameterization products, all written into RESP/AMBER
const (
	Mol2File   = "MOL.mol2"
	PrepiFile  = "MOL.prepi"
	FrcmodFile = "MOL.frcmod"
	PdbFile    = "MOL.pdb"
	TopFile    = "lig.top"
	CrdFile    = "lig.crd"

	// SlvFile - solvent parameter file consumed by the simulation engine
	SlvFile = "lig.slv"

	// TleapLeaprc - force field loaded by the tleap step
	TleapLeaprc = "leaprc.gaff"

	// TleapInput - script driving the topology build
	TleapInput = "tleap.in"
)

// Simulation artifacts
const (
	// MMCInput - per-molecule simulation input rendered from the template
	MMCInput = "prot.inp"

	// MMCOutput - simulation output, redirected from stdout
	MMCOutput = "prot.out"

	// MMCBinary - simulation executable expected in the program directory
	MMCBinary = "mmc.bin"
)

// Charge handling
const (
	// ChargeScale - Amber topologies store partial charges premultiplied by
	// 18.2223 (the square root of the Coulomb constant in kcal*A/mol);
	// dividing by it recovers electron units
	ChargeScale = 18.2223
)

// Disk space safety margin
const (
	// DiskSpaceBufferPercent - additional space to require beyond the bytes
	// being copied (15%). Accounts for filesystem overhead and log growth.
	DiskSpaceBufferPercent = 0.15
)

// Per-invocation run directories for rendered scripts and scheduler logs
const (
	// RunDirTimeFormat - timestamp suffix distinguishing submission rounds
	RunDirTimeFormat = "20060102_150405"

	// OptRunDirPrefix - script/log directory created by optimization submissions
	OptRunDirPrefix = "gaussian_jobs_"

	// RespRunDirPrefix - script/log directory created by RESP submissions
	RespRunDirPrefix = "resp_jobs_"

	// MMCLogsDirName - script/log directory used by batch simulation submissions
	MMCLogsDirName = "slurm_logs"
)
